package server

const uiPredictJS = `
(function () {
  function formatFeatureName(name) {
    return String(name).split('_').map((w) => w.charAt(0).toUpperCase() + w.slice(1)).join(' ');
  }

  function schemaProblems(r) {
    const problems = [];
    if (!r || typeof r !== 'object' || Array.isArray(r)) return ['body is not a JSON object'];
    if (typeof r.prediction !== 'string') problems.push('prediction is required');
    else if (!r.prediction.trim()) problems.push('prediction must not be empty');
    if (typeof r.confidence !== 'number') problems.push('confidence is required');
    if (!r.features || typeof r.features !== 'object' || Array.isArray(r.features)) problems.push('features is required');
    if (r.result_class != null && typeof r.result_class !== 'string') problems.push('result_class must be a string');
    if (r.demo_mode != null && typeof r.demo_mode !== 'boolean') problems.push('demo_mode must be a boolean');
    return problems;
  }

  function resultClass(r) {
    if (r.result_class && String(r.result_class).trim()) return String(r.result_class).trim();
    const text = r.prediction;
    return text.includes('Expected') && !text.includes('No ') ? 'rain-expected' : 'no-rain';
  }

  function confidenceColor(c) {
    if (c > 70) return '#10b981';
    if (c > 50) return '#f59e0b';
    return '#ef4444';
  }

  function render(r) {
    const region = document.getElementById('result');
    const text = document.getElementById('prediction-text');
    const confidence = document.getElementById('confidence');
    const list = document.getElementById('features-list');

    text.textContent = r.prediction;
    text.className = 'prediction-text ' + resultClass(r);
    confidence.textContent = 'Confidence: ' + r.confidence + '%';
    confidence.style.color = confidenceColor(r.confidence);

    list.innerHTML = '';
    Object.keys(r.features).sort().forEach((key) => {
      const row = document.createElement('div');
      row.className = 'feature-item';
      const name = document.createElement('span');
      name.className = 'feature-name';
      name.textContent = formatFeatureName(key);
      const value = document.createElement('span');
      value.className = 'feature-value';
      const v = r.features[key];
      value.textContent = (v !== null && typeof v === 'object') ? JSON.stringify(v) : String(v);
      row.appendChild(name);
      row.appendChild(value);
      list.appendChild(row);
    });

    region.style.display = 'block';
    region.style.animation = 'fadeInUp 0.6s ease-out';
    region.scrollIntoView({ behavior: 'smooth', block: 'nearest' });
  }

  async function handleSubmit(e) {
    e.preventDefault();
    const form = e.target;
    const btn = form.querySelector('button[type="submit"]');
    const original = btn.textContent;
    btn.textContent = 'Predicting...';
    btn.disabled = true;
    try {
      let response;
      try {
        response = await fetch('/predict', { method: 'POST', body: new FormData(form) });
      } catch (err) {
        window.raincastFlash.notify('error', 'Network error: ' + err.message);
        return;
      }
      let payload = null;
      try { payload = await response.json(); } catch (_) { payload = null; }
      if (!response.ok) {
        const msg = payload && typeof payload.error === 'string' && payload.error.trim();
        window.raincastFlash.notify('error', msg || 'Prediction failed');
        return;
      }
      const problems = schemaProblems(payload);
      if (problems.length) {
        window.raincastFlash.notify('error', 'Malformed prediction response: ' + problems.join('; '));
        return;
      }
      render(payload);
      if (payload.demo_mode === true) {
        window.raincastFlash.notify('warning', '⚠️ Using demo mode - actual model not available');
      }
    } finally {
      btn.textContent = original;
      btn.disabled = false;
    }
  }

  document.addEventListener('DOMContentLoaded', () => {
    const form = document.getElementById('prediction-form');
    if (form) form.addEventListener('submit', handleSubmit);
  });
})();
`
